package dictionary

import "github.com/b71729/dcmcodec/vr"

// Standard holds the built-in subset of the public data dictionary.
// A full dictionary can be loaded with `Parse` and layered on top with `With`.
var Standard = New(standardEntries...).WithUIDs(standardUIDs...)

var standardEntries = []Entry{
	{0x00000000, vr.UL, "1", "CommandGroupLength", "Command Group Length", false},
	{0x00000002, vr.UI, "1", "AffectedSOPClassUID", "Affected SOP Class UID", false},
	{0x00000003, vr.UI, "1", "RequestedSOPClassUID", "Requested SOP Class UID", false},
	{0x00000010, vr.CS, "1", "RecognitionCode", "Recognition Code", true},
	{0x00000100, vr.US, "1", "CommandField", "Command Field", false},
	{0x00000110, vr.US, "1", "MessageID", "Message ID", false},
	{0x00000120, vr.US, "1", "MessageIDBeingRespondedTo", "Message ID Being Responded To", false},
	{0x00000200, vr.AE, "1", "Initiator", "Initiator", true},
	{0x00000300, vr.AE, "1", "Receiver", "Receiver", true},
	{0x00000400, vr.AE, "1", "FindLocation", "Find Location", true},
	{0x00000600, vr.AE, "1", "MoveDestination", "Move Destination", false},
	{0x00000700, vr.US, "1", "Priority", "Priority", false},
	{0x00000800, vr.US, "1", "CommandDataSetType", "Command Data Set Type", false},
	{0x00000900, vr.US, "1", "Status", "Status", false},
	{0x00000901, vr.AT, "1-n", "OffendingElement", "Offending Element", false},
	{0x00000902, vr.LO, "1", "ErrorComment", "Error Comment", false},
	{0x00000903, vr.US, "1", "ErrorID", "Error ID", false},
	{0x00001000, vr.UI, "1", "AffectedSOPInstanceUID", "Affected SOP Instance UID", false},
	{0x00001001, vr.UI, "1", "RequestedSOPInstanceUID", "Requested SOP Instance UID", false},
	{0x00001002, vr.US, "1", "EventTypeID", "Event Type ID", false},
	{0x00001005, vr.AT, "1-n", "AttributeIdentifierList", "Attribute Identifier List", false},
	{0x00001008, vr.US, "1", "ActionTypeID", "Action Type ID", false},
	{0x00001020, vr.US, "1", "NumberOfRemainingSuboperations", "Number of Remaining Sub-operations", false},
	{0x00001021, vr.US, "1", "NumberOfCompletedSuboperations", "Number of Completed Sub-operations", false},
	{0x00001022, vr.US, "1", "NumberOfFailedSuboperations", "Number of Failed Sub-operations", false},
	{0x00001023, vr.US, "1", "NumberOfWarningSuboperations", "Number of Warning Sub-operations", false},
	{0x00001030, vr.AE, "1", "MoveOriginatorApplicationEntityTitle", "Move Originator Application Entity Title", false},
	{0x00001031, vr.US, "1", "MoveOriginatorMessageID", "Move Originator Message ID", false},
	{0x00005170, vr.IS, "1", "Copies", "Copies", true},
	{0x00020000, vr.UL, "1", "FileMetaInformationGroupLength", "File Meta Information Group Length", false},
	{0x00020001, vr.OB, "1", "FileMetaInformationVersion", "File Meta Information Version", false},
	{0x00020002, vr.UI, "1", "MediaStorageSOPClassUID", "Media Storage SOP Class UID", false},
	{0x00020003, vr.UI, "1", "MediaStorageSOPInstanceUID", "Media Storage SOP Instance UID", false},
	{0x00020010, vr.UI, "1", "TransferSyntaxUID", "Transfer Syntax UID", false},
	{0x00020012, vr.UI, "1", "ImplementationClassUID", "Implementation Class UID", false},
	{0x00020013, vr.SH, "1", "ImplementationVersionName", "Implementation Version Name", false},
	{0x00020016, vr.AE, "1", "SourceApplicationEntityTitle", "Source Application Entity Title", false},
	{0x00020017, vr.AE, "1", "SendingApplicationEntityTitle", "Sending Application Entity Title", false},
	{0x00020018, vr.AE, "1", "ReceivingApplicationEntityTitle", "Receiving Application Entity Title", false},
	{0x00020100, vr.UI, "1", "PrivateInformationCreatorUID", "Private Information Creator UID", false},
	{0x00020102, vr.OB, "1", "PrivateInformation", "Private Information", false},
	{0x00041130, vr.CS, "1", "FileSetID", "File-set ID", false},
	{0x00041200, vr.UL, "1", "OffsetOfTheFirstDirectoryRecordOfTheRootDirectoryEntity", "Offset of the First Directory Record of the Root Directory Entity", false},
	{0x00041220, vr.SQ, "1", "DirectoryRecordSequence", "Directory Record Sequence", false},
	{0x00041430, vr.CS, "1", "DirectoryRecordType", "Directory Record Type", false},
	{0x00041500, vr.CS, "1-8", "ReferencedFileID", "Referenced File ID", false},
	{0x00080005, vr.CS, "1-n", "SpecificCharacterSet", "Specific Character Set", false},
	{0x00080008, vr.CS, "2-n", "ImageType", "Image Type", false},
	{0x00080012, vr.DA, "1", "InstanceCreationDate", "Instance Creation Date", false},
	{0x00080013, vr.TM, "1", "InstanceCreationTime", "Instance Creation Time", false},
	{0x00080014, vr.UI, "1", "InstanceCreatorUID", "Instance Creator UID", false},
	{0x00080016, vr.UI, "1", "SOPClassUID", "SOP Class UID", false},
	{0x00080018, vr.UI, "1", "SOPInstanceUID", "SOP Instance UID", false},
	{0x00080020, vr.DA, "1", "StudyDate", "Study Date", false},
	{0x00080021, vr.DA, "1", "SeriesDate", "Series Date", false},
	{0x00080022, vr.DA, "1", "AcquisitionDate", "Acquisition Date", false},
	{0x00080023, vr.DA, "1", "ContentDate", "Content Date", false},
	{0x0008002A, vr.DT, "1", "AcquisitionDateTime", "Acquisition DateTime", false},
	{0x00080030, vr.TM, "1", "StudyTime", "Study Time", false},
	{0x00080031, vr.TM, "1", "SeriesTime", "Series Time", false},
	{0x00080032, vr.TM, "1", "AcquisitionTime", "Acquisition Time", false},
	{0x00080033, vr.TM, "1", "ContentTime", "Content Time", false},
	{0x00080050, vr.SH, "1", "AccessionNumber", "Accession Number", false},
	{0x00080052, vr.CS, "1", "QueryRetrieveLevel", "Query/Retrieve Level", false},
	{0x00080054, vr.AE, "1-n", "RetrieveAETitle", "Retrieve AE Title", false},
	{0x00080056, vr.CS, "1", "InstanceAvailability", "Instance Availability", false},
	{0x00080060, vr.CS, "1", "Modality", "Modality", false},
	{0x00080061, vr.CS, "1-n", "ModalitiesInStudy", "Modalities in Study", false},
	{0x00080064, vr.CS, "1", "ConversionType", "Conversion Type", false},
	{0x00080070, vr.LO, "1", "Manufacturer", "Manufacturer", false},
	{0x00080080, vr.LO, "1", "InstitutionName", "Institution Name", false},
	{0x00080081, vr.ST, "1", "InstitutionAddress", "Institution Address", false},
	{0x00080090, vr.PN, "1", "ReferringPhysicianName", "Referring Physician's Name", false},
	{0x00080100, vr.SH, "1", "CodeValue", "Code Value", false},
	{0x00080102, vr.SH, "1", "CodingSchemeDesignator", "Coding Scheme Designator", false},
	{0x00080104, vr.LO, "1", "CodeMeaning", "Code Meaning", false},
	{0x00080201, vr.SH, "1", "TimezoneOffsetFromUTC", "Timezone Offset From UTC", false},
	{0x00081010, vr.SH, "1", "StationName", "Station Name", false},
	{0x00081030, vr.LO, "1", "StudyDescription", "Study Description", false},
	{0x0008103E, vr.LO, "1", "SeriesDescription", "Series Description", false},
	{0x00081040, vr.LO, "1", "InstitutionalDepartmentName", "Institutional Department Name", false},
	{0x00081050, vr.PN, "1-n", "PerformingPhysicianName", "Performing Physician's Name", false},
	{0x00081070, vr.PN, "1-n", "OperatorsName", "Operators' Name", false},
	{0x00081090, vr.LO, "1", "ManufacturerModelName", "Manufacturer's Model Name", false},
	{0x00081110, vr.SQ, "1", "ReferencedStudySequence", "Referenced Study Sequence", false},
	{0x00081115, vr.SQ, "1", "ReferencedSeriesSequence", "Referenced Series Sequence", false},
	{0x00081140, vr.SQ, "1", "ReferencedImageSequence", "Referenced Image Sequence", false},
	{0x00081150, vr.UI, "1", "ReferencedSOPClassUID", "Referenced SOP Class UID", false},
	{0x00081155, vr.UI, "1", "ReferencedSOPInstanceUID", "Referenced SOP Instance UID", false},
	{0x00081160, vr.IS, "1-n", "ReferencedFrameNumber", "Referenced Frame Number", false},
	{0x00082111, vr.ST, "1", "DerivationDescription", "Derivation Description", false},
	{0x00082112, vr.SQ, "1", "SourceImageSequence", "Source Image Sequence", false},
	{0x00100010, vr.PN, "1", "PatientName", "Patient's Name", false},
	{0x00100020, vr.LO, "1", "PatientID", "Patient ID", false},
	{0x00100021, vr.LO, "1", "IssuerOfPatientID", "Issuer of Patient ID", false},
	{0x00100030, vr.DA, "1", "PatientBirthDate", "Patient's Birth Date", false},
	{0x00100032, vr.TM, "1", "PatientBirthTime", "Patient's Birth Time", false},
	{0x00100040, vr.CS, "1", "PatientSex", "Patient's Sex", false},
	{0x00101000, vr.LO, "1-n", "OtherPatientIDs", "Other Patient IDs", true},
	{0x00101001, vr.PN, "1-n", "OtherPatientNames", "Other Patient Names", false},
	{0x00101010, vr.AS, "1", "PatientAge", "Patient's Age", false},
	{0x00101020, vr.DS, "1", "PatientSize", "Patient's Size", false},
	{0x00101030, vr.DS, "1", "PatientWeight", "Patient's Weight", false},
	{0x00104000, vr.LT, "1", "PatientComments", "Patient Comments", false},
	{0x00180010, vr.LO, "1", "ContrastBolusAgent", "Contrast/Bolus Agent", false},
	{0x00180015, vr.CS, "1", "BodyPartExamined", "Body Part Examined", false},
	{0x00180020, vr.CS, "1-n", "ScanningSequence", "Scanning Sequence", false},
	{0x00180050, vr.DS, "1", "SliceThickness", "Slice Thickness", false},
	{0x00180060, vr.DS, "1", "KVP", "KVP", false},
	{0x00180080, vr.DS, "1", "RepetitionTime", "Repetition Time", false},
	{0x00180081, vr.DS, "1", "EchoTime", "Echo Time", false},
	{0x00180087, vr.DS, "1", "MagneticFieldStrength", "Magnetic Field Strength", false},
	{0x00180088, vr.DS, "1", "SpacingBetweenSlices", "Spacing Between Slices", false},
	{0x00181000, vr.LO, "1", "DeviceSerialNumber", "Device Serial Number", false},
	{0x00181020, vr.LO, "1-n", "SoftwareVersions", "Software Versions", false},
	{0x00181030, vr.LO, "1", "ProtocolName", "Protocol Name", false},
	{0x00181150, vr.IS, "1", "ExposureTime", "Exposure Time", false},
	{0x00181151, vr.IS, "1", "XRayTubeCurrent", "X-Ray Tube Current", false},
	{0x00181152, vr.IS, "1", "Exposure", "Exposure", false},
	{0x00185100, vr.CS, "1", "PatientPosition", "Patient Position", false},
	{0x0020000D, vr.UI, "1", "StudyInstanceUID", "Study Instance UID", false},
	{0x0020000E, vr.UI, "1", "SeriesInstanceUID", "Series Instance UID", false},
	{0x00200010, vr.SH, "1", "StudyID", "Study ID", false},
	{0x00200011, vr.IS, "1", "SeriesNumber", "Series Number", false},
	{0x00200012, vr.IS, "1", "AcquisitionNumber", "Acquisition Number", false},
	{0x00200013, vr.IS, "1", "InstanceNumber", "Instance Number", false},
	{0x00200020, vr.CS, "2", "PatientOrientation", "Patient Orientation", false},
	{0x00200032, vr.DS, "3", "ImagePositionPatient", "Image Position (Patient)", false},
	{0x00200037, vr.DS, "6", "ImageOrientationPatient", "Image Orientation (Patient)", false},
	{0x00200052, vr.UI, "1", "FrameOfReferenceUID", "Frame of Reference UID", false},
	{0x00200060, vr.CS, "1", "Laterality", "Laterality", false},
	{0x00201041, vr.DS, "1", "SliceLocation", "Slice Location", false},
	{0x00203100, vr.CS, "1-n", "SourceImageIDs", "Source Image IDs", true},
	{0x00204000, vr.LT, "1", "ImageComments", "Image Comments", false},
	{0x00280002, vr.US, "1", "SamplesPerPixel", "Samples per Pixel", false},
	{0x00280004, vr.CS, "1", "PhotometricInterpretation", "Photometric Interpretation", false},
	{0x00280006, vr.US, "1", "PlanarConfiguration", "Planar Configuration", false},
	{0x00280008, vr.IS, "1", "NumberOfFrames", "Number of Frames", false},
	{0x00280009, vr.AT, "1-n", "FrameIncrementPointer", "Frame Increment Pointer", false},
	{0x00280010, vr.US, "1", "Rows", "Rows", false},
	{0x00280011, vr.US, "1", "Columns", "Columns", false},
	{0x00280030, vr.DS, "2", "PixelSpacing", "Pixel Spacing", false},
	{0x00280100, vr.US, "1", "BitsAllocated", "Bits Allocated", false},
	{0x00280101, vr.US, "1", "BitsStored", "Bits Stored", false},
	{0x00280102, vr.US, "1", "HighBit", "High Bit", false},
	{0x00280103, vr.US, "1", "PixelRepresentation", "Pixel Representation", false},
	{0x00280106, vr.US, "1", "SmallestImagePixelValue", "Smallest Image Pixel Value", false},
	{0x00280107, vr.US, "1", "LargestImagePixelValue", "Largest Image Pixel Value", false},
	{0x00281050, vr.DS, "1-n", "WindowCenter", "Window Center", false},
	{0x00281051, vr.DS, "1-n", "WindowWidth", "Window Width", false},
	{0x00281052, vr.DS, "1", "RescaleIntercept", "Rescale Intercept", false},
	{0x00281053, vr.DS, "1", "RescaleSlope", "Rescale Slope", false},
	{0x00281054, vr.LO, "1", "RescaleType", "Rescale Type", false},
	{0x00281101, vr.US, "3", "RedPaletteColorLookupTableDescriptor", "Red Palette Color Lookup Table Descriptor", false},
	{0x00281201, vr.OW, "1", "RedPaletteColorLookupTableData", "Red Palette Color Lookup Table Data", false},
	{0x00282110, vr.CS, "1", "LossyImageCompression", "Lossy Image Compression", false},
	{0x00283000, vr.SQ, "1", "ModalityLUTSequence", "Modality LUT Sequence", false},
	{0x00283002, vr.US, "3", "LUTDescriptor", "LUT Descriptor", false},
	{0x00283006, vr.US, "1-n", "LUTData", "LUT Data", false},
	{0x00283010, vr.SQ, "1", "VOILUTSequence", "VOI LUT Sequence", false},
	{0x00321060, vr.LO, "1", "RequestedProcedureDescription", "Requested Procedure Description", false},
	{0x00400244, vr.DA, "1", "PerformedProcedureStepStartDate", "Performed Procedure Step Start Date", false},
	{0x00400245, vr.TM, "1", "PerformedProcedureStepStartTime", "Performed Procedure Step Start Time", false},
	{0x00400275, vr.SQ, "1", "RequestAttributesSequence", "Request Attributes Sequence", false},
	{0x0040A010, vr.CS, "1", "RelationshipType", "Relationship Type", false},
	{0x0040A040, vr.CS, "1", "ValueType", "Value Type", false},
	{0x0040A043, vr.SQ, "1", "ConceptNameCodeSequence", "Concept Name Code Sequence", false},
	{0x0040A160, vr.UT, "1", "TextValue", "Text Value", false},
	{0x0040A730, vr.SQ, "1", "ContentSequence", "Content Sequence", false},
	{0x00540081, vr.US, "1", "NumberOfSlices", "Number of Slices", false},
	{0x00880140, vr.UI, "1", "StorageMediaFileSetUID", "Storage Media File-set UID", false},
	{0x50000005, vr.US, "1", "CurveDimensions", "Curve Dimensions", true},
	{0x50000010, vr.US, "1", "NumberOfPoints", "Number of Points", true},
	{0x50000020, vr.CS, "1", "TypeOfData", "Type of Data", true},
	{0x50003000, vr.OB, "1", "CurveData", "Curve Data", true},
	{0x60000010, vr.US, "1", "OverlayRows", "Overlay Rows", false},
	{0x60000011, vr.US, "1", "OverlayColumns", "Overlay Columns", false},
	{0x60000015, vr.IS, "1", "NumberOfFramesInOverlay", "Number of Frames in Overlay", false},
	{0x60000040, vr.CS, "1", "OverlayType", "Overlay Type", false},
	{0x60000050, vr.SS, "2", "OverlayOrigin", "Overlay Origin", false},
	{0x60000100, vr.US, "1", "OverlayBitsAllocated", "Overlay Bits Allocated", false},
	{0x60000102, vr.US, "1", "OverlayBitPosition", "Overlay Bit Position", false},
	{0x60003000, vr.OW, "1", "OverlayData", "Overlay Data", false},
	{0x7FE00008, vr.OF, "1", "FloatPixelData", "Float Pixel Data", false},
	{0x7FE00009, vr.OD, "1", "DoubleFloatPixelData", "Double Float Pixel Data", false},
	{0x7FE00010, vr.OW, "1", "PixelData", "Pixel Data", false},
	{0xFFFAFFFA, vr.SQ, "1", "DigitalSignaturesSequence", "Digital Signatures Sequence", false},
	{0xFFFCFFFC, vr.OB, "1", "DataSetTrailingPadding", "Data Set Trailing Padding", false},
}

var standardUIDs = []UIDEntry{
	{"1.2.840.10008.1.1", "Verification SOP Class", "SOP Class"},
	{"1.2.840.10008.1.3.10", "Media Storage Directory Storage", "SOP Class"},
	{"1.2.840.10008.5.1.4.1.1.1", "Computed Radiography Image Storage", "SOP Class"},
	{"1.2.840.10008.5.1.4.1.1.1.1", "Digital X-Ray Image Storage - For Presentation", "SOP Class"},
	{"1.2.840.10008.5.1.4.1.1.2", "CT Image Storage", "SOP Class"},
	{"1.2.840.10008.5.1.4.1.1.2.1", "Enhanced CT Image Storage", "SOP Class"},
	{"1.2.840.10008.5.1.4.1.1.3.1", "Ultrasound Multi-frame Image Storage", "SOP Class"},
	{"1.2.840.10008.5.1.4.1.1.4", "MR Image Storage", "SOP Class"},
	{"1.2.840.10008.5.1.4.1.1.4.1", "Enhanced MR Image Storage", "SOP Class"},
	{"1.2.840.10008.5.1.4.1.1.6.1", "Ultrasound Image Storage", "SOP Class"},
	{"1.2.840.10008.5.1.4.1.1.7", "Secondary Capture Image Storage", "SOP Class"},
	{"1.2.840.10008.5.1.4.1.1.20", "Nuclear Medicine Image Storage", "SOP Class"},
	{"1.2.840.10008.5.1.4.1.1.88.11", "Basic Text SR Storage", "SOP Class"},
	{"1.2.840.10008.5.1.4.1.1.104.1", "Encapsulated PDF Storage", "SOP Class"},
	{"1.2.840.10008.5.1.4.1.1.128", "Positron Emission Tomography Image Storage", "SOP Class"},
	{"1.2.840.10008.5.1.4.1.1.481.1", "RT Image Storage", "SOP Class"},
	{"1.2.840.10008.5.1.4.1.2.1.1", "Patient Root Query/Retrieve Information Model - FIND", "SOP Class"},
	{"1.2.840.10008.5.1.4.1.2.2.1", "Study Root Query/Retrieve Information Model - FIND", "SOP Class"},
	{"1.2.840.10008.5.1.4.1.2.2.2", "Study Root Query/Retrieve Information Model - MOVE", "SOP Class"},
	{"1.2.840.10008.1.2", "Implicit VR Little Endian", "Transfer Syntax"},
	{"1.2.840.10008.1.2.1", "Explicit VR Little Endian", "Transfer Syntax"},
	{"1.2.840.10008.1.2.1.99", "Deflated Explicit VR Little Endian", "Transfer Syntax"},
	{"1.2.840.10008.1.2.2", "Explicit VR Big Endian", "Transfer Syntax"},
	{"1.2.840.10008.1.2.4.50", "JPEG Baseline (Process 1)", "Transfer Syntax"},
	{"1.2.840.10008.1.2.4.70", "JPEG Lossless, Non-Hierarchical, First-Order Prediction", "Transfer Syntax"},
	{"1.2.840.10008.1.2.4.90", "JPEG 2000 Image Compression (Lossless Only)", "Transfer Syntax"},
	{"1.2.840.10008.1.2.5", "RLE Lossless", "Transfer Syntax"},
}
